package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"  validate:"required,gt=0"`
}

type selfValidating struct {
	called bool
}

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "Mona", Age: 20}))
	assert.Error(t, ValidateRequest(&sampleRequest{Name: "", Age: 20}))
	assert.Error(t, ValidateRequest(&sampleRequest{Name: "Mona", Age: -1}))

	sv := &selfValidating{}
	assert.NoError(t, ValidateRequest(sv))
	assert.True(t, sv.called, "Validate method should be preferred")
}
