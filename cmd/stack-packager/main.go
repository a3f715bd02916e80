package main

// Build-time variables 'version', 'commit', and 'date' are declared in
// root.go and populated via -ldflags.

// main is the entry point for the stack-packager application. Command
// parsing, configuration loading, context setup, and error reporting are all
// handled through the Cobra command tree.
func main() {
	Execute()
}
