package main

import (
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/mangoba/admute/app/muter"
	"github.com/mangoba/admute/app/tools"
	"github.com/mangoba/admute/internal/config"
	"github.com/mangoba/admute/internal/engine"
	"github.com/mangoba/admute/internal/logger"
)

const configFile = "admute.toml"

func main() {
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.New(false, nil).Error("%v", err)
		os.Exit(1)
	}

	if cfg.Headless {
		runHeadless(cfg)
		return
	}

	myApp := app.New()
	myWindow := myApp.NewWindow("Ad Mute")
	myWindow.Resize(fyne.NewSize(500, 600))

	panel, sys, err := muter.NewPanel(cfg)
	if err != nil {
		logger.New(false, nil).Error("startup failed: %v", err)
		os.Exit(1)
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Muter", panel),
		container.NewTabItem("Templates", tools.NewToolsPanel(myWindow, cfg.AssetsDir)),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	myWindow.SetContent(tabs)

	// Every termination path must run the controller's fail-safe unmute
	// before the process exits.
	myWindow.SetCloseIntercept(func() {
		sys.Muter.Stop()
		myApp.Quit()
	})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		sys.Muter.Stop()
		fyne.Do(myApp.Quit)
	}()

	myWindow.ShowAndRun()
	sys.Muter.Stop()
}

// runHeadless skips the GUI entirely and starts muting immediately.
func runHeadless(cfg config.Config) {
	log := logger.New(cfg.Debug, nil)

	sys, err := engine.Build(cfg, log, nil)
	if err != nil {
		log.Error("startup failed: %v", err)
		os.Exit(1)
	}

	sys.Muter.Start()
	sys.Muter.Resume()
	log.Info("running headless — press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sys.Muter.Stop()
}
