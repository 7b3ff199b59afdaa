package input

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func keys(events ...keyboard.KeyEvent) <-chan keyboard.KeyEvent {
	c := make(chan keyboard.KeyEvent, len(events))
	for _, e := range events {
		c <- e
	}
	close(c)
	return c
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "0", Label(0))
	assert.Equal(t, "9", Label(9))
	assert.Equal(t, "a", Label(10))
	assert.Equal(t, " ", Label(36))
	assert.Equal(t, " ", Label(-1))
}

func TestChoose(t *testing.T) {
	i, err := Choose(keys(keyboard.KeyEvent{Rune: 'x'}, keyboard.KeyEvent{Rune: '5'}, keyboard.KeyEvent{Rune: '2'}), 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = Choose(keys(keyboard.KeyEvent{Rune: 'b'}), 12)
	assert.NoError(t, err)
	assert.Equal(t, 11, i)

	_, err = Choose(keys(keyboard.KeyEvent{Key: keyboard.KeyEsc}, keyboard.KeyEvent{Rune: '0'}), 1)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = Choose(keys(keyboard.KeyEvent{Rune: '0'}), 0)
	assert.ErrorIs(t, err, ErrCancelled)

	broken := errors.New("closed")
	_, err = Choose(keys(keyboard.KeyEvent{Err: broken}), 1)
	assert.ErrorIs(t, err, broken)
}
