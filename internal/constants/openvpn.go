package constants

// Environment variables exported by OpenVPN to --auth-user-pass-verify scripts.
const (
	EnvVarScriptType = "script_type"
	EnvVarUsername   = "username"
	EnvVarPassword   = "password"
	EnvVarCommonName = "common_name"
	EnvVarClientIP   = "untrusted_ip"
	EnvVarClientPort = "untrusted_port"
)

// Script types under which the helper runs non-interactively.
var VerifyScriptTypes = []string{
	"auth-user-pass-verify",
	"user-pass-verify",
}

const (
	ExitCodeAuthSuccess = 0
	ExitCodeAuthFailed  = 1
)
