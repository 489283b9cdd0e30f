// Package config manages user-level settings stored at ~/.archgen/config.yaml.
// Values may also come from ARCHGEN_* environment variables. Settings cover the
// conflict policy, install skipping, the remote download cache and mirror, and
// the diagnostic log level.
package config
