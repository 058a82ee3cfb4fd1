package main

import "employee_directory/cli"

func main() {
	cli.Execute()
}
