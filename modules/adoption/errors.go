package adoption

import "errors"

var ErrPageNotFound = errors.New("adoption page not found")
