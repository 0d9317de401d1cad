// Command token mints a signed bearer token for the salvage server using the
// same JWT_SECRET the server is configured with.
package main

import (
	"flag"
	"fmt"
	"os"

	"salvage-server/internal/auth"
	"salvage-server/internal/shared/config"
)

func main() {
	pilot := flag.String("pilot", "", "pilot name to embed in the token")
	role := flag.String("role", auth.RolePilot, "token role: pilot or admin")
	flag.Parse()

	if *pilot == "" {
		fmt.Fprintln(os.Stderr, "-pilot is required")
		os.Exit(2)
	}
	if *role != auth.RolePilot && *role != auth.RoleAdmin {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.GenerateJWT(config.GlobalConfig.Auth, *pilot, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
