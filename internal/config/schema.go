package config

type fileSchema struct {
	Server  serverSchema  `toml:"server"`
	Session sessionSchema `toml:"session"`
	Lists   listsSchema   `toml:"lists"`
	Log     logSchema     `toml:"log"`
}

type serverSchema struct {
	Addr            string `toml:"addr"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

type sessionSchema struct {
	CookieName    string `toml:"cookie_name"`
	Secret        string `toml:"secret"`
	IdleTTL       string `toml:"idle_ttl"`
	SweepInterval string `toml:"sweep_interval"`
}

type listsSchema struct {
	RejectSameNameRename bool `toml:"reject_same_name_rename"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func toSchema(cfg Config) fileSchema {
	return fileSchema{
		Server: serverSchema{
			Addr:            cfg.Server.Addr,
			ShutdownTimeout: cfg.Server.ShutdownTimeout.String(),
		},
		Session: sessionSchema{
			CookieName:    cfg.Session.CookieName,
			Secret:        cfg.Session.Secret,
			IdleTTL:       cfg.Session.IdleTTL.String(),
			SweepInterval: cfg.Session.SweepInterval.String(),
		},
		Lists: listsSchema{
			RejectSameNameRename: cfg.Lists.RejectSameNameRename,
		},
		Log: logSchema{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		},
	}
}
