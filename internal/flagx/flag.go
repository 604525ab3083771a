// Package flagx lets independent loaders pick their own flags out of os.Args
// without tripping over flags that belong to someone else.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Both "-c conf.json" and "--config=conf.json" forms are recognised. A value
// is taken from the next argument only when it does not itself look like a flag.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	ours, _ := Split(args, allowedFlags, nil)
	return ours
}

// Split partitions args into the listed flags with their values and
// everything else, both in original order and never nil. Flags in valued
// take the next argument as their value unless it looks like a flag; flags
// in boolean never do, so "-j list" keeps "list" in rest.
func Split(args []string, valued, boolean []string) (ours, rest []string) {
	takesValue := make(map[string]bool, len(valued)+len(boolean))
	for _, f := range valued {
		takesValue[f] = true
	}
	for _, f := range boolean {
		takesValue[f] = false
	}

	ours = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := takesValue[name]; ok {
				ours = append(ours, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		valueNext, ok := takesValue[arg]
		if !ok {
			rest = append(rest, arg)
			continue
		}
		ours = append(ours, arg)
		if valueNext && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			ours = append(ours, args[i+1])
			i++
		}
	}

	return ours, rest
}

// JsonConfigFlagsFrom returns the config file path given in args with -c,
// -config or --config, or an empty string when none is present.
func JsonConfigFlagsFrom(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}
