package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

// Defaults can be kept in a YAML file instead of being passed every time.
type Defaults struct {
	HitWindow     float64 `yaml:"hit_window"`
	BeatDivisions int     `yaml:"beat_divisions"`
	Database      string  `yaml:"database"`
	Address       string  `yaml:"address"`
	Jobs          int     `yaml:"jobs"`
}

func builtinDefaults() Defaults {
	return Defaults{
		HitWindow:     game.DefaultHitWindow,
		BeatDivisions: game.DefaultBeatDivisions,
		Database:      "./riftvibe.db",
		Address:       ":8080",
		Jobs:          runtime.NumCPU(),
	}
}

// LoadDefaults reads file over the built in defaults. Missing keys keep theirs.
func LoadDefaults(file string) (Defaults, error) {
	defaults := builtinDefaults()
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return defaults, err
	}
	if err := yaml.Unmarshal(data, &defaults); nil != err {
		return defaults, errors.Wrapf(err, "unable to parse %v", file)
	}
	return defaults, nil
}

func defaultFile() string {
	dir, err := os.UserConfigDir()
	if nil != err {
		return ""
	}
	return filepath.Join(dir, "riftvibe", "config.yaml")
}

type Config struct {
	Command string

	HitWindow     float64
	BeatDivisions int
	Database      string
	Address       string
	Jobs          int
	Color         string

	Files      []string // solve
	Candidates bool
	Save       bool
	Directory  string // batch, pick
	In, Out    string // convert, history uses In
}

// Parse reads the command line, filling anything not given from the YAML
// defaults file.
func Parse(args []string) (*Config, error) {
	app := kingpin.New("riftvibe", "Finds the best vibe activations of a recorded Rift of the NecroDancer performance.")
	app.Version(Version)

	var (
		configFile    = app.Flag("config", "YAML defaults file").Short('c').String()
		hitWindow     = app.Flag("hit-window", "Seconds a hit may land after its beat").Default("-1").Float64()
		beatDivisions = app.Flag("beat-divisions", "Beat grid divisions, 4 for quarter beats").Short('d').Int()
		database      = app.Flag("database", "Result history database").String()
		color         = app.Flag("color", "Colour output").Default("auto").Enum("auto", "always", "never")

		solve      = app.Command("solve", "Solve recorded sessions").Default()
		files      = solve.Arg("files", "Session files, .json or .bin").Required().ExistingFiles()
		candidates = solve.Flag("all", "Also list every activation considered").Short('a').Bool()
		save       = solve.Flag("save", "Record results in the history database").Short('s').Bool()

		batch          = app.Command("batch", "Solve every session in a directory")
		batchDirectory = batch.Arg("directory", "Session directory").Required().ExistingDir()
		jobs           = batch.Flag("jobs", "Sessions solved at once").Short('j').Int()

		pick          = app.Command("pick", "Choose one session in a directory to solve")
		pickDirectory = pick.Arg("directory", "Session directory").Required().ExistingDir()

		convert = app.Command("convert", "Write a session as a binary snapshot")
		in      = convert.Arg("in", "Session file").Required().ExistingFile()
		out     = convert.Arg("out", "Snapshot file").Required().String()

		history     = app.Command("history", "List earlier results for a session")
		historyFile = history.Arg("file", "Session file").Required().ExistingFile()

		serve   = app.Command("serve", "Serve the solver over HTTP")
		address = serve.Flag("address", "Listen address").Short('l').String()
	)

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}

	defaults := builtinDefaults()
	file := *configFile
	if file == "" {
		if f := defaultFile(); f != "" {
			if _, err := os.Stat(f); nil == err {
				file = f
			}
		}
	}
	if file != "" {
		if defaults, err = LoadDefaults(file); nil != err {
			return nil, err
		}
	}

	c := &Config{
		Command:       command,
		HitWindow:     defaults.HitWindow,
		BeatDivisions: defaults.BeatDivisions,
		Database:      defaults.Database,
		Address:       defaults.Address,
		Jobs:          defaults.Jobs,
		Color:         *color,
	}
	if *hitWindow >= 0 {
		c.HitWindow = *hitWindow
	}
	if *beatDivisions > 0 {
		c.BeatDivisions = *beatDivisions
	}
	if *database != "" {
		c.Database = *database
	}
	if *address != "" {
		c.Address = *address
	}
	if *jobs > 0 {
		c.Jobs = *jobs
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}

	switch command {
	case solve.FullCommand():
		c.Files, c.Candidates, c.Save = *files, *candidates, *save
	case batch.FullCommand():
		c.Directory = *batchDirectory
	case pick.FullCommand():
		c.Directory = *pickDirectory
	case convert.FullCommand():
		c.In, c.Out = *in, *out
	case history.FullCommand():
		c.In = *historyFile
	}
	return c, nil
}
