package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentRatio(t *testing.T) {
	assert.InDelta(t, 0.82, EnrollmentRatio(41, 50), 1e-9)
	assert.True(t, NearCapacity(41, 50))

	assert.InDelta(t, 0.80, EnrollmentRatio(40, 50), 1e-9)
	assert.False(t, NearCapacity(40, 50))

	assert.Zero(t, EnrollmentRatio(10, 0))
	assert.False(t, NearCapacity(10, 0))
}

func TestEnrollmentPercent(t *testing.T) {
	assert.Equal(t, 82, EnrollmentPercent(41, 50))
	assert.Equal(t, 100, EnrollmentPercent(45, 45))
	assert.Equal(t, 0, EnrollmentPercent(3, 0))
}
