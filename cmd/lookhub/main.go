// @title           LookHub API
// @version         1.0
// @description     Каталог образов и вещей с публикацией в соцсети.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "lookhub/cmd/lookhub/cmd"

func main() {
	cmd.Execute()
}
