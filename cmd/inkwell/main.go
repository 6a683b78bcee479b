package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lingyue/inkwell"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe()
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: inkwell new <site-name>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkwell %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	app := inkwell.New(inkwell.SiteConfig{
		Name:                  inkwell.EnvOr("SITE_NAME", "Blog"),
		URL:                   inkwell.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:           inkwell.EnvOr("SITE_DESCRIPTION", ""),
		Author:                inkwell.EnvOr("SITE_AUTHOR", ""),
		Addr:                  inkwell.EnvOr("ADDR", ":3000"),
		ContentDir:            inkwell.EnvOr("CONTENT_DIR", "content"),
		StaticDir:             inkwell.EnvOr("STATIC_DIR", "public"),
		GuestbookDatabasePath: inkwell.EnvOr("GUESTBOOK_DB", "data/guestbook.db"),
		AdminPassword:         inkwell.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:         inkwell.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:          inkwell.EnvOr("COOKIE_SECURE", "") == "true",
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println(`inkwell - a flat-file blog and knowledge-site engine

Usage:
  inkwell <command> [arguments]

Commands:
  serve         Serve the site in the current directory
  new <name>    Create a new inkwell site
  version       Print the inkwell version
  help          Show this help message

Examples:
  inkwell new mysite
  inkwell new github.com/user/mysite`)
}
