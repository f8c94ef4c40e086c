package observable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetNotifiesSubscribers(t *testing.T) {
	v := NewValue(0)

	var seen []int
	unsubscribe := v.Subscribe(func(next int) {
		seen = append(seen, next)
	})

	v.Set(1)
	v.Set(2)
	require.Equal(t, []int{1, 2}, seen)
	require.Equal(t, 2, v.Get())

	unsubscribe()
	v.Set(3)
	require.Equal(t, []int{1, 2}, seen)
	require.Equal(t, 3, v.Get())
}

func TestUnsubscribeTwiceIsFine(t *testing.T) {
	v := NewValue("a")
	unsubscribe := v.Subscribe(func(string) {})
	unsubscribe()
	unsubscribe()
	v.Set("b")
}

func TestMultipleSubscribers(t *testing.T) {
	v := NewValue(0)

	first := 0
	second := 0
	v.Subscribe(func(next int) { first = next })
	v.Subscribe(func(next int) { second = next })

	v.Set(7)
	require.Equal(t, 7, first)
	require.Equal(t, 7, second)
}
