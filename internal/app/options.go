package app

import "errors"

// Options are the validated invocation inputs.
type Options struct {
	Override string // explicit major.minor, used verbatim
	Yes      bool   // accept the resolved version without asking
	StartRef string // first commit of the range; empty means interactive pick
}

// OptionsFromArgs validates the positional arguments. At most one starting
// reference is accepted.
func OptionsFromArgs(override string, yes bool, args []string) (Options, error) {
	if len(args) > 1 {
		return Options{}, errors.New("at most one starting reference is accepted")
	}
	opts := Options{Override: override, Yes: yes}
	if len(args) == 1 {
		opts.StartRef = args[0]
	}
	return opts, nil
}
