package browser

import (
	"os"
	"runtime"

	"github.com/rpdata/rpscraper/lib"
)

const (
	// CloudMarkerEnv is set by Azure App Service on every site instance.
	CloudMarkerEnv = "WEBSITE_SITE_NAME"
	// ContainerMarkerEnv can be set in an image to flag container execution explicitly.
	ContainerMarkerEnv = "DOCKER_CONTAINER"
	// ContainerMarkerFile is created by the docker runtime in every container.
	ContainerMarkerFile = "/.dockerenv"
)

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// FileExistsFunc reports whether a path exists.
type FileExistsFunc func(path string) bool

// Environment is the runtime classification used to pick launch flags.
type Environment struct {
	Cloud     bool `json:"cloud" yaml:"cloud"`
	Container bool `json:"container" yaml:"container"`
	MacOS     bool `json:"macos" yaml:"macos"`
}

// Kind names the branch of launch configuration the environment selects.
func (e Environment) Kind() string {
	switch {
	case e.Cloud:
		return "cloud"
	case e.Container:
		return "container"
	default:
		return "desktop"
	}
}

// ClassifyEnvironment computes the environment from explicit inputs. Cloud
// implies Container.
func ClassifyEnvironment(lookup LookupEnvFunc, exists FileExistsFunc, goos string) Environment {
	_, cloud := lookup(CloudMarkerEnv)
	_, dockerVar := lookup(ContainerMarkerEnv)
	return Environment{
		Cloud:     cloud,
		Container: cloud || dockerVar || exists(ContainerMarkerFile),
		MacOS:     goos == "darwin",
	}
}

// DetectEnvironment classifies the current process.
func DetectEnvironment() Environment {
	return ClassifyEnvironment(os.LookupEnv, lib.LocalFileExists, runtime.GOOS)
}
