package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/vintern/iconize"
)

// An iconize integration converting a Nerd Font / stylesheet pair into
// per-icon SVG files plus a JSON metadata document.
// Run with e.g.:
//
//	go run . -font Symbols.ttf -css nerd-fonts.css -group md -out icons
func main() {
	var (
		fontPath = flag.String("font", "", "path to the icon font (ttf/otf)")
		cssPath  = flag.String("css", "", "path to the icon stylesheet")
		group    = flag.String("group", "", "only convert icons of this group prefix")
		outDir   = flag.String("out", "icons", "output directory")
	)
	flag.Parse()
	if *fontPath == "" || *cssPath == "" {
		log.Fatal("both -font and -css are required")
	}

	ctx := context.Background()

	i, err := iconize.New(ctx, conversionSpec(*fontPath, *cssPath, *group, *outDir), iconize.NewConfig())
	if err != nil {
		log.Fatalf("iconize.New() error: %v", err)
	}
	defer i.Shutdown(ctx)

	notifyChan, _ := i.NotifyChannel()
	go func() {
		for event := range notifyChan {
			log.Printf("[%s] %s", event.Level, event.Message)
		}
	}()

	if err = i.Run(ctx); err != nil {
		log.Fatalf("iconize.Run() error: %v", err)
	}
	log.Printf("converted %d icons into %s", len(i.Records()), *outDir)
}

func conversionSpec(fontPath, cssPath, group, outDir string) []byte {
	filters := "[]"
	if group != "" {
		filters = fmt.Sprintf(`[{"field": "group", "pattern": %q}]`, group)
	}
	return []byte(fmt.Sprintf(`
	{
	   "name": "nerdfont-icons",
	   "version": 1,
	   "description": "Export icon glyphs as SVG files with joined metadata.",
	   "resources": [
	      {"type": "font", "path": %q},
	      {"type": "css", "path": %q}
	   ],
	   "fields": ["code", "name", "group", "iconname:icon:camelcase", "svgfile", "viewbox"],
	   "filters": %s,
	   "outputs": [
	      {"format": "svg", "path": %q},
	      {"format": "json", "path": %q}
	   ]
	}
	`, fontPath, cssPath, filters,
		outDir+"/{group}/{iconname}.svg",
		outDir+"/icons.json"))
}
