/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/fieldguide-api/cmd"

// @title           Field Guide API
// @version         1.0
// @description     Backend for a personal field guide: bookmarked places on a map, tags, place search and per-user view state.
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/fieldguide-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	cmd.Execute()
}
