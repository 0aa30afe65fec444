package http

// Configuration of the HTTP server. TLS is enabled when a certificate is
// set.
type Configuration struct {
	Host       string `validate:"required"`
	Port       uint32 `validate:"required"`
	Key        string
	Cert       string
	Cacert     string
	Insecure   bool
	ServerName string `yaml:"server-name"`
}
