package domain

import "strings"

// PlaceholderExtension is used for scratch input files whose name carries no
// usable extension.
const PlaceholderExtension = "dat"

const convertedSuffix = "_converted"

// Extension returns the text after the last '.' of filename. It returns ""
// when there is no dot or the dot is the last character.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return filename[i+1:]
}

// ExtensionOr is Extension with a fallback for the empty case.
func ExtensionOr(filename, fallback string) string {
	if ext := Extension(filename); ext != "" {
		return ext
	}
	return fallback
}

// StripExtension removes the last extension segment. A name whose only dot is
// the leading one (".profile") is returned unchanged.
func StripExtension(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		return filename[:i]
	}
	return filename
}

// OutputFilename builds the suggested name of a converted artifact:
// "<base>_converted.<ext>", where base is original without its last
// extension, or defaultBase when original is blank.
func OutputFilename(original, defaultBase, ext string) string {
	if strings.TrimSpace(original) == "" {
		original = defaultBase
	}
	return StripExtension(original) + convertedSuffix + "." + ext
}
