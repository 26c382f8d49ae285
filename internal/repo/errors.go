package repo

import "errors"

var (
	// ErrNotFound jest zwracany, gdy żaden rekord nie został znaleziony.
	ErrNotFound = errors.New("rekord nie znaleziony")
)
