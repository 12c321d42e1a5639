package main

import "github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/cli"

func main() {
	cli.Execute()
}
