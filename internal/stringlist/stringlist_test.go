package stringlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "empty", values: nil},
		{name: "single", values: []string{"a"}},
		{name: "several", values: []string{"v6.2", "v6.3", "v6.4"}},
		{name: "duplicates kept", values: []string{"x", "x", "y", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &List{}
			for _, v := range tt.values {
				l.Append(v)
			}
			assert.Equal(t, tt.values, l.Strings())
			assert.Equal(t, len(tt.values), l.Len())
		})
	}
}

func TestNew(t *testing.T) {
	l := New("a", "b")
	require.Equal(t, []string{"a", "b"}, l.Strings())
}

func TestNilListReadsAsEmpty(t *testing.T) {
	var l *List
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Strings())
	assert.Nil(t, l.Head())
	assert.False(t, l.Contains("a"))
}

func TestContains(t *testing.T) {
	l := New("PyQt_SSL", "PyQt_OpenGL")
	assert.True(t, l.Contains("PyQt_SSL"))
	assert.False(t, l.Contains("PyQt_Printer"))
}

func TestNodeTraversal(t *testing.T) {
	l := New("a", "b", "c")
	n := l.Head()
	require.NotNil(t, n)
	assert.Equal(t, "a", n.Value)
	n = n.Next()
	require.NotNil(t, n)
	assert.Equal(t, "b", n.Value)
	n = n.Next()
	require.NotNil(t, n)
	assert.Equal(t, "c", n.Value)
	assert.Nil(t, n.Next())
}
