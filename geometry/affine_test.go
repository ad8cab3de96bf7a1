package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAffine_Apply(t *testing.T) {
	// Mock
	transform := NewAffine(10, 10, 600000, 6200040)

	// Tested code
	x, y := transform.Apply(2, 3)

	// Asserts
	assert.Equal(t, 600020.0, x)
	assert.Equal(t, 6200010.0, y)
}

func TestBoundsFromShape(t *testing.T) {
	// Mock
	transform := NewAffine(60, 60, 600000, 6200040)

	// Tested code
	bounds := BoundsFromShape(transform, 1830, 1830)

	// Asserts
	assert.Equal(t, Bounds{Left: 600000, Bottom: 6090240, Right: 709800, Top: 6200040}, bounds)
}
