// Package ucmgr wires a configured object-storage provider together with
// logging and configuration. Library users go through Manager; the unicloud
// CLI is a thin shell around it.
package ucmgr

import (
	"context"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/unicloudio/unicloud/pkg/awss3"
	"github.com/unicloudio/unicloud/pkg/gcs"
	"github.com/unicloudio/unicloud/pkg/localstore"
	"github.com/unicloudio/unicloud/pkg/unicloud"
)

type Manager struct {
	Provider *unicloud.Provider
	Logger   logrus.FieldLogger
	Cfg      *viper.Viper
}

// NewManager builds a manager from user options. Recognized options:
//   "config-file" : string, path to a unicloud config (default search is
//                   ./configs/unicloud.* and ~/.unicloud/unicloud.*)
//   "logger"      : logrus.FieldLogger to use instead of the default
func NewManager(userCfg map[string]interface{}) (*Manager, error) {
	var err error
	mgr := &Manager{}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(logrus.FieldLogger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must satisfy logrus.FieldLogger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	mgr.Provider = &unicloud.Provider{}
	if err := mgr.initObjectStore(); err != nil {
		return nil, err
	}

	return mgr, nil
}

func (self *Manager) Destroy() {
	if err := self.Provider.ObjStore.Close(); err != nil {
		self.Logger.Warnf("Failed to close object store cleanly: %v", err)
	}
}

func (self *Manager) initConfig(cfgPath *string) error {
	// This is a private viper context just for unicloud (so as not to
	// conflict with the importer's usage).
	self.Cfg = viper.New()

	// Environment fallback happens here, once, at the boundary. The provider
	// packages only ever see explicit Config structs.
	self.Cfg.SetDefault("service.objstore.awsS3.region", "us-west-2")
	self.Cfg.BindEnv("service.objstore.awsS3.access-key-id", "AWS_ACCESS_KEY_ID")
	self.Cfg.BindEnv("service.objstore.awsS3.secret-access-key", "AWS_SECRET_ACCESS_KEY")
	self.Cfg.BindEnv("service.objstore.awsS3.region", "AWS_DEFAULT_REGION")
	self.Cfg.BindEnv("service.objstore.gcs.service-key", "GOOGLE_APPLICATION_CREDENTIALS")
	self.Cfg.BindEnv("service.objstore.gcs.service-key-content", "SERVICE_KEY_CONTENT")

	if cfgPath != nil {
		// Use config file from the flag.
		self.Cfg.SetConfigFile(*cfgPath)
	} else {
		// default search path for config is ./configs/unicloud.* then
		// ~/.unicloud/unicloud.* (* can be json, yaml, etc)
		self.Cfg.AddConfigPath("./configs")
		if home, err := homedir.Dir(); err == nil {
			self.Cfg.AddConfigPath(filepath.Join(home, ".unicloud"))
		}
		self.Cfg.SetConfigName("unicloud")
	}

	if err := self.Cfg.ReadInConfig(); err != nil {
		return errors.Wrap(err, "Failed to load config")
	}
	return nil
}

func (self *Manager) initObjectStore() error {
	providerName := self.Cfg.GetString("default-provider")
	if providerName == "" {
		return errors.New("No default provider in configuration")
	}

	serviceName := self.Cfg.GetString("providers." + providerName + ".objstore")
	if serviceName == "" {
		return errors.New("Provider \"" + providerName + "\" does not provide an object storage service")
	}

	var err error
	switch serviceName {
	case "awsS3":
		self.Provider.ObjStore, err = awss3.NewClient(awss3.Config{
			AccessKeyID:     self.Cfg.GetString("service.objstore.awsS3.access-key-id"),
			SecretAccessKey: self.Cfg.GetString("service.objstore.awsS3.secret-access-key"),
			Region:          self.Cfg.GetString("service.objstore.awsS3.region"),
		}, self.Logger.WithField("module", "objstore.awss3"))
	case "gcs":
		var keyJSON []byte
		if content := self.Cfg.GetString("service.objstore.gcs.service-key-content"); content != "" {
			keyJSON, err = gcs.DecodeServiceKey(content)
			if err != nil {
				return errors.Wrap(err, "Bad SERVICE_KEY_CONTENT value")
			}
		}
		self.Provider.ObjStore, err = gcs.NewClient(context.Background(), gcs.Config{
			ProjectID:      self.Cfg.GetString("service.objstore.gcs.project-id"),
			ServiceKeyFile: self.Cfg.GetString("service.objstore.gcs.service-key"),
			ServiceKeyJSON: keyJSON,
		}, self.Logger.WithField("module", "objstore.gcs"))
	case "local":
		self.Provider.ObjStore, err = localstore.NewStore(
			self.Cfg.GetString("service.objstore.local.root"),
			self.Logger.WithField("module", "objstore.local"))
	default:
		return errors.New("Unrecognized object storage service: " + serviceName)
	}

	if err != nil {
		return errors.Wrap(err, "Failed to initialize service "+serviceName)
	}
	return nil
}
