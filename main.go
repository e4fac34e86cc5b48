// Package main provides the entry point for the Photo Editor application.
package main

import (
	"log"
	"time"

	"photo-editor/internal/app"
	"photo-editor/internal/version"
	"photo-editor/ui/mainwindow"
	"photo-editor/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"golang.design/x/clipboard"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Photo Editor v%s", version.Version)

	if err := clipboard.Init(); err != nil {
		// Copy-to-clipboard stays unavailable; everything else works.
		log.Printf("clipboard unavailable: %v", err)
	}

	fyneApp := fyneapp.NewWithID("photo-editor")
	appPrefs := prefs.Load()

	theme := &app.EditorTheme{Dark: appPrefs.Bool(prefs.KeyDarkTheme, false)}
	fyneApp.Settings().SetTheme(theme)

	state := app.NewState()
	win := mainwindow.New(fyneApp, state, appPrefs, theme)

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for a restart when a newer binary lands on disk
// during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
