package engine

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/mangoba/admute/internal/constants"
	"github.com/mangoba/admute/internal/logger"
)

// Template is one ad reference image. Filename order defines detection
// priority.
type Template struct {
	Name  string
	Image image.Image
}

// Assets holds everything loaded from the assets directory at startup.
// Immutable for the process lifetime.
type Assets struct {
	Ads         []Template
	MutedIcon   image.Image // volume/mute.png, may be nil
	UnmutedIcon image.Image // volume/volume.png, may be nil
}

// Icon returns the template for a known icon state, or nil.
func (a Assets) Icon(state IconState) image.Image {
	switch state {
	case IconMuted:
		return a.MutedIcon
	case IconUnmuted:
		return a.UnmutedIcon
	default:
		return nil
	}
}

// ImageLoader decodes a template image from disk. *screen.Searcher
// implements it.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// LoadAssets reads the ad template set and the mute icon pair from dir.
// A missing assets directory is fatal; an empty ad set or a missing icon
// only degrades detection and is logged.
func LoadAssets(loader ImageLoader, dir string, log *logger.AppLogger) (Assets, error) {
	if _, err := os.Stat(dir); err != nil {
		return Assets{}, fmt.Errorf("assets directory: %w", err)
	}

	var a Assets

	adsDir := filepath.Join(dir, constants.AdsSubdir)
	var files []string
	for _, pattern := range []string{"*.png", "*.jpg", "*.jpeg"} {
		matched, err := filepath.Glob(filepath.Join(adsDir, pattern))
		if err != nil {
			return Assets{}, err
		}
		files = append(files, matched...)
	}
	sort.Strings(files)

	for _, file := range files {
		img, err := loader.LoadImage(file)
		if err != nil {
			log.Warn("skipping ad template %s: %v", file, err)
			continue
		}
		a.Ads = append(a.Ads, Template{Name: filepath.Base(file), Image: img})
		log.Debug("loaded ad template %q", filepath.Base(file))
	}

	if len(a.Ads) == 0 {
		log.Warn("no ad images found in %q — ad detection will never trigger", adsDir)
	} else {
		log.Info("loaded %d ad image(s) from %q", len(a.Ads), adsDir)
	}

	volumeDir := filepath.Join(dir, constants.VolumeSubdir)
	a.MutedIcon = loadOptionalIcon(loader, filepath.Join(volumeDir, constants.MutedIconFile), log)
	a.UnmutedIcon = loadOptionalIcon(loader, filepath.Join(volumeDir, constants.UnmutedIconFile), log)
	if a.MutedIcon == nil || a.UnmutedIcon == nil {
		log.Warn("mute icon pair incomplete — on-screen state reconciliation degraded")
	}

	return a, nil
}

func loadOptionalIcon(loader ImageLoader, path string, log *logger.AppLogger) image.Image {
	img, err := loader.LoadImage(path)
	if err != nil {
		log.Debug("icon template %s not loaded: %v", path, err)
		return nil
	}
	return img
}
