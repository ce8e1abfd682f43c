package log

import "strings"

// UserTagArguments returns a new slice with the values for the flags given in flagsToTag surrounded by the <ud></ud>
// tags. Both the '-flag value' and '-flag=value' forms are supported.
func UserTagArguments(args, flagsToTag []string) []string {
	ret := make([]string, len(args))
	copy(ret, args)

	for i := 0; i < len(ret); i++ {
		name, value, inline := strings.Cut(ret[i], "=")

		if !flagMatches(name, flagsToTag) {
			continue
		}

		if inline {
			ret[i] = name + "=" + TagUserData(value)
			continue
		}

		// A trailing flag without a value has nothing to tag.
		if i+1 >= len(ret) {
			break
		}

		i++

		ret[i] = TagUserData(ret[i])
	}

	return ret
}

// flagMatches returns whether flag is one of the reference flags, flags may be given with one or two leading dashes.
func flagMatches(flag string, referenceFlags []string) bool {
	if !strings.HasPrefix(flag, "-") {
		return false
	}

	trimmed := strings.TrimLeft(flag, "-")

	for _, referenceFlag := range referenceFlags {
		if trimmed == strings.TrimLeft(referenceFlag, "-") {
			return true
		}
	}

	return false
}
