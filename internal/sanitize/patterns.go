package sanitize

import "regexp"

// Categories reported in redaction stats.
const (
	CategoryAWS      = "AWS"
	CategoryAzure    = "Azure"
	CategoryAPI      = "API"
	CategoryJWT      = "JWT"
	CategoryPassword = "Password"
	CategoryPrivate  = "Private"
	CategoryGitHub   = "GitHub"
	CategoryGoogle   = "Google"
	CategoryGeneric  = "Generic"
)

type pattern struct {
	re       *regexp.Regexp
	repl     string
	category string
}

// patterns is applied in order; earlier (more specific) patterns win over
// the generic catch-alls at the end.
var patterns = []pattern{
	// AWS
	{regexp.MustCompile(`AKIA[A-Z0-9]{16}`), `[AWS-KEY]`, CategoryAWS},
	{regexp.MustCompile(`aws_secret_access_key\s*=\s*["']?[A-Za-z0-9+/=]{20,}["']?`), `aws_secret_access_key = "[AWS-SECRET]"`, CategoryAWS},
	{regexp.MustCompile(`"secret_key"\s*:\s*"[A-Za-z0-9+/=]{20,}"`), `"secret_key": "[AWS-SECRET]"`, CategoryAWS},
	{regexp.MustCompile(`aws_session_token\s*=\s*["'][A-Za-z0-9+/=]{100,}["']`), `aws_session_token = "[AWS-SESSION-TOKEN]"`, CategoryAWS},

	// Azure
	{regexp.MustCompile(`AccountKey=[A-Za-z0-9+/=]{50,}`), `AccountKey=[AZURE-KEY]`, CategoryAzure},
	{regexp.MustCompile(`sig=[A-Za-z0-9%+/=]{30,}`), `sig=[AZURE-SAS]`, CategoryAzure},
	{regexp.MustCompile(`AZURE_STORAGE_SAS_TOKEN="[^"]*"`), `AZURE_STORAGE_SAS_TOKEN="[AZURE-SAS]"`, CategoryAzure},
	{regexp.MustCompile(`(AZURE_API_KEY(?:_\d+)?)=([^=\s\[\]]+)`), `${1}=[API-KEY]`, CategoryAPI},

	// API keys
	{regexp.MustCompile(`API_KEY\s*=\s*["']?[A-Za-z0-9]{20,}["']?`), `API_KEY = "[API-KEY]"`, CategoryAPI},
	{regexp.MustCompile(`([A-Z_]*API_KEY[A-Z0-9_]*)=([^=\s\[\]]+)`), `${1}=[API-KEY]`, CategoryAPI},
	{regexp.MustCompile(`(AZURE|APPSETTING).*API_KEY.*=([^=\s\[\]]+)`), `${1}=[API-KEY]`, CategoryAPI},
	{regexp.MustCompile(`"key"\s*:\s*"[A-Za-z0-9]{20,}"`), `"key": "[API-KEY]"`, CategoryAPI},

	// Auth/bearer tokens
	{regexp.MustCompile(`AUTH_TOKEN\s*=\s*["']?[A-Za-z0-9._-]{10,}["']?`), `AUTH_TOKEN = "[AUTH-TOKEN]"`, CategoryGeneric},
	{regexp.MustCompile(`Authorization token: [A-Za-z0-9._-]{10,}`), `Authorization token: [AUTH-TOKEN]`, CategoryGeneric},
	{regexp.MustCompile(`Bearer\s+[A-Za-z0-9._-]{10,}`), `Bearer [BEARER-TOKEN]`, CategoryGeneric},

	// JWT
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), `[JWT-TOKEN]`, CategoryJWT},

	// Passwords
	{regexp.MustCompile(`Password=[^;"']+;`), `Password=[PASSWORD];`, CategoryPassword},
	{regexp.MustCompile(`password\s*=\s*"[^"]*"`), `password = "[PASSWORD]"`, CategoryPassword},
	{regexp.MustCompile(`"password"\s*:\s*"[^"]*"`), `"password": "[PASSWORD]"`, CategoryPassword},
	// "key=value=True" keeps the trailing "=True" part intact
	{regexp.MustCompile(`([A-Za-z0-9_]*[Pp][Aa][Ss][Ss][Ww][Oo][Rr][Dd][A-Za-z0-9_]*)=([^=\s]*)((?:=.*)?)`), `${1}=[PASSWORD]${3}`, CategoryPassword},
	{regexp.MustCompile(`([A-Za-z0-9_]*[Pp][Aa][Ss][Ss][Ww][Oo][Rr][Dd][A-Za-z0-9_]*)="([^"]*)"`), `${1}="[PASSWORD]"`, CategoryPassword},

	// GitHub
	{regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`), `[GITHUB-TOKEN]`, CategoryGitHub},

	// Google
	{regexp.MustCompile(`AIza[A-Za-z0-9_-]{35}`), `[GOOGLE-API-KEY]`, CategoryGoogle},
	{regexp.MustCompile(`[0-9]{12}-[A-Za-z0-9_]{32}\.apps\.googleusercontent\.com`), `[GOOGLE-OAUTH]`, CategoryGoogle},

	// Generic secrets in env vars - keep trailing "=True" style suffixes
	{regexp.MustCompile(`([A-Z][A-Z0-9_]*(?:_\d+)?(?:SECRET|KEY|TOKEN|AUTH|CRED|SIGN|IDENTITY|MSI)[A-Z0-9_]*)=([^=\s]*)((?:=.*)?)`), `${1}=[SECRET]${3}`, CategoryGeneric},
	{regexp.MustCompile(`([A-Z][A-Z0-9_]*(?:_\d+)?(?:SECRET|KEY|TOKEN|AUTH|CRED|SIGN|IDENTITY|MSI)[A-Z0-9_]*)="([^"]*)"`), `${1}="[SECRET]"`, CategoryGeneric},
}

// marker matches a redaction marker such as [AWS-KEY] or [PASSWORD],
// used to avoid counting an already-redacted region twice.
var marker = regexp.MustCompile(`\[[A-Z][A-Z-]*\]`)
