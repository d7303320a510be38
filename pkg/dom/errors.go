package dom

import "errors"

// ErrParse is returned when an HTML document cannot be parsed.
var ErrParse = errors.New("failed to parse html document")
