package main

import "github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/cmd"

func main() {
	cmd.Execute()
}
