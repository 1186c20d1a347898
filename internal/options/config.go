package options

// LaunchConfig is the resolved description of one launcher run.
//
// It is built once by Parse and handed by value to every consumer, so no
// consumer can change what another one sees.
type LaunchConfig struct {
	// TargetDirectory is an absolute path to a directory that existed when
	// the config was built.
	TargetDirectory string
	// Profile is always one of Profiles().
	Profile Profile
	// EnableVersionControl requests the git bootstrap after the editor starts.
	EnableVersionControl bool
	// Verbose enables debug logging of every external command.
	Verbose bool
}
