package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultComparator(t *testing.T) {
	cmp := DefaultComparator[int]()
	require.Equal(t, Less, cmp(1, 2))
	require.Equal(t, Equal, cmp(2, 2))
	require.Equal(t, Greater, cmp(3, 2))

	strCmp := DefaultComparator[string]()
	require.Equal(t, Less, strCmp("abc", "abd"))
	require.Equal(t, Equal, strCmp("", ""))
	require.Equal(t, Greater, strCmp("b", "abc"))

	fCmp := DefaultComparator[float64]()
	require.Equal(t, Less, fCmp(math.Inf(-1), 0.1))
	require.Equal(t, Greater, fCmp(1.1, 1.0))
}

type myKey uint8

func TestDefaultComparator_TildeKey(t *testing.T) {
	cmp := DefaultComparator[myKey]()
	require.Equal(t, Less, cmp(myKey(0), myKey(255)))
}

func TestReverseComparator(t *testing.T) {
	cmp := ReverseComparator(DefaultComparator[int]())
	require.Equal(t, Greater, cmp(1, 2))
	require.Equal(t, Equal, cmp(2, 2))
	require.Equal(t, Less, cmp(3, 2))

	// Twice reversed is the natural ordering again.
	cmp = ReverseComparator(cmp)
	require.Equal(t, Less, cmp(1, 2))

	require.Nil(t, ReverseComparator[int](nil))
}

func TestCmpResultString(t *testing.T) {
	testcases := []struct {
		res  CmpResult
		want string
	}{
		{Less, "LESS"},
		{Equal, "EQUAL"},
		{Greater, "GREATER"},
		{CmpResult(7), "CmpResult(7)"},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.want, tc.res.String())
	}
}
