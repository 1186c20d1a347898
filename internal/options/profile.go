package options

import "strings"

// Profile is a named bundle of editor settings.
type Profile int

const (
	// ProfileBlank opens the editor without language-specific settings.
	ProfileBlank Profile = iota
	// ProfileRust opens the editor with the Rust settings bundle.
	ProfileRust
)

var profileNames = map[Profile]string{
	ProfileBlank: "Blank",
	ProfileRust:  "Rust",
}

// Profiles returns every recognized profile in declaration order.
func Profiles() []Profile {
	return []Profile{ProfileBlank, ProfileRust}
}

// String returns the canonical profile name passed to the editor.
func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return profileNames[ProfileBlank]
}

// ParseProfile matches name against the recognized profiles ignoring case.
// Unrecognized names yield ProfileBlank and false.
func ParseProfile(name string) (Profile, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Profiles() {
		if strings.EqualFold(p.String(), name) {
			return p, true
		}
	}
	return ProfileBlank, false
}

func profileList() string {
	names := make([]string, 0, len(profileNames))
	for _, p := range Profiles() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
