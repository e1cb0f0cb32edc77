// Karaoke CLI — инструмент командной строки для заявок на песни
// и управления очередью через HTTP API.
//
// Использование:
//
//	karaoke [--api-url URL] [--json] [--admin-password P] <command> [flags]
//
// Команды:
//
//	song   Заявки: request, list, show, done
//	queue  Очередь исполнения
//	turns  Лимит песен за ход
//	login  Проверка пароля оператора
package main

import (
	"fmt"
	"os"

	"github.com/shaiso/Karaoke/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
