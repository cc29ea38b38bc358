package cmd

import (
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/Mr-H-06/Rcompiler/generate"
)

// BuildConfigFileName is the optional TOML file a build directory may
// carry to override the defaults this core ships with.
const BuildConfigFileName = "rx-build.toml"

// tomlBuildConfig is the on-disk shape of rx-build.toml.
type tomlBuildConfig struct {
	TargetTriple string `toml:"target-triple,omitempty"`
	DataLayout   string `toml:"data-layout,omitempty"`
	LogLevel     string `toml:"log-level,omitempty"`
}

// LoadBuildConfig reads dir/rx-build.toml if present, applying its
// overrides on top of generate.DefaultBuildProfile.  Absence of the file
// is not an error -- every field is optional and defaults apply.
func LoadBuildConfig(dir string) (generate.BuildProfile, string, error) {
	profile := generate.DefaultBuildProfile()
	logLevel := "verbose"

	path := dir + string(os.PathSeparator) + BuildConfigFileName
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return profile, logLevel, nil
	} else if err != nil {
		return profile, logLevel, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return profile, logLevel, err
	}

	var cfg tomlBuildConfig
	if err := toml.Unmarshal(buff, &cfg); err != nil {
		return profile, logLevel, err
	}

	if cfg.TargetTriple != "" {
		profile.Triple = cfg.TargetTriple
	}
	if cfg.DataLayout != "" {
		profile.DataLayout = cfg.DataLayout
	}
	if cfg.LogLevel != "" {
		logLevel = cfg.LogLevel
	}

	return profile, logLevel, nil
}
