package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch calls onChange with the re-decoded config whenever the file backing v
// is written. Decode failures are reported through onError and the previous
// config stays in effect.
func Watch(v *viper.Viper, onChange func(Config), onError func(error)) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}

		cfg, err := Decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
