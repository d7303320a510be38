package formvalidator

import "time"

// Config holds the engine timing. It can be loaded from the environment with
// pkg/config.
type Config struct {
	Debounce         time.Duration `env:"FORM_DEBOUNCE" envDefault:"300ms"`
	SuccessAnimation time.Duration `env:"FORM_SUCCESS_ANIMATION" envDefault:"1s"`
	FailureAnimation time.Duration `env:"FORM_FAILURE_ANIMATION" envDefault:"500ms"`
	Animations       bool          `env:"FORM_ANIMATIONS" envDefault:"true"`
}

// DefaultConfig returns the timing used by New.
func DefaultConfig() Config {
	return Config{
		Debounce:         300 * time.Millisecond,
		SuccessAnimation: time.Second,
		FailureAnimation: 500 * time.Millisecond,
		Animations:       true,
	}
}
