package main

import (
	"github.com/Ciwooooo/ai-chat-app/cmd/aichat/cli"
)

func main() {
	cli.InitAndExecute()
}
