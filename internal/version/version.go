package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset      = "\033[0m"
	colorYellowBold = "\033[33;1m"
)

// banner returns the colored ASCII art with a %s slot for the tool name.
func banner() string {
	art := `
                  __           __  
   ____  _____   / /___  _____/ /__
  / __ \/ ___/  / / / / / / __/ //_/
 / / / (__  )  / /_/ / /_/ / /_/ ,<   
/_/ /_/____/   \__,_/\__,_/\__/_/|_|
%s ` + Version

	return colorYellowBold + art[1:] + colorReset
}

// CLIVersion returns the banner of the nsduck shell.
func CLIVersion() string {
	return fmt.Sprintf(banner(), "Shell")
}

// BenchVersion returns the banner of nsduckbench.
func BenchVersion() string {
	return fmt.Sprintf(banner(), "Bench")
}
