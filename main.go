package main

import "uniportal/internal/app"

// @title           University Portal API
// @version         1.0
// @description     Multi-role university portal: accounts, programs, courses, enrollments and payments behind cookie-based sessions with email MFA.
// @BasePath        /
func main() {
	app.Run()
}
