/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/TaskDeck/cmd"
	"github.com/josephgoksu/TaskDeck/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
