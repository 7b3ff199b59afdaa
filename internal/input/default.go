package input

import (
	"log"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

var ErrCancelled = errors.New("selection cancelled")

const labels = "0123456789abcdefghijklmnopqrstuvwxyz"

// Label is the key that selects the i-th choice, or a space past the last key.
func Label(i int) string {
	if i < 0 || i >= len(labels) {
		return " "
	}
	return string(labels[i])
}

// Choose reads keys until one selects one of count choices. Esc and Ctrl-C
// cancel, anything else is ignored.
func Choose(keys <-chan keyboard.KeyEvent, count int) (int, error) {
	for key := range keys {
		if nil != key.Err {
			return -1, errors.Wrap(key.Err, "unable to read key")
		}
		if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC {
			return -1, ErrCancelled
		}
		for i := 0; i < count && i < len(labels); i++ {
			if key.Rune == rune(labels[i]) {
				return i, nil
			}
		}
	}
	return -1, ErrCancelled
}

// Pick opens the keyboard and waits for one of count choices.
func Pick(count int) (int, error) {
	keys, err := keyboard.GetKeys(16)
	if nil != err {
		return -1, errors.Wrap(err, "unable to open keyboard")
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()
	return Choose(keys, count)
}
