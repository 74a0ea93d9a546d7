package config

import "strings"

// Config is the single immutable configuration value, loaded once at startup
// from the environment (and an optional .env file) by cmd/server/main.go.
type Config struct {
	Port string `env:"PORT,default=8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	FileAllowedTypes    string `env:"FILE_ALLOWED_TYPES,default=pdf,txt"`
	FileMaxSize         int64  `env:"FILE_MAX_SIZE,default=10485760"`
	FileDefaultChunkSize int   `env:"FILE_DEFAULT_CHUNK_SIZE,default=512000"`
	FileStorageRoot     string `env:"FILE_STORAGE_ROOT,default=./projects"`

	GenerationBackend string `env:"GENERATION_BACKEND,default=openai"`
	EmbeddingBackend  string `env:"EMBEDDING_BACKEND,default=openai"`
	VectorDBBackend   string `env:"VECTOR_DB_BACKEND,default=pgvector"`

	GenerationModelID  string `env:"GENERATION_MODEL_ID,default=gpt-4o-mini"`
	EmbeddingModelID   string `env:"EMBEDDING_MODEL_ID,default=text-embedding-3-small"`
	EmbeddingModelSize int    `env:"EMBEDDING_MODEL_SIZE,default=1536"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIAPIURL string `env:"OPENAI_API_URL"`
	CohereAPIKey string `env:"COHERE_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`

	PineconeAPIKey    string `env:"PINECONE_API_KEY"`
	PineconeIndexHost string `env:"PINECONE_INDEX_HOST"`

	VectorDBPath                 string `env:"VECTOR_DB_PATH,default=./vectordb"`
	VectorDBDistanceMethod       string `env:"VECTOR_DB_DISTANCE_METHOD,default=cosine"`
	VectorDBPgvecIndexThreshold  int    `env:"VECTOR_DB_PGVEC_INDEX_THRESHOLD,default=1000"`

	SecretKey                string `env:"SECRET_KEY,required"`
	Algorithm                string `env:"ALGORITHM,default=HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=60"`

	PrimaryLang string `env:"PRIMARY_LANG,default=en"`
	DefaultLang string `env:"DEFAULT_LANG,default=en"`
}

// Vector DB backend identifiers.
const (
	VectorDBPgVector = "pgvector"
	VectorDBPinecone = "pinecone"
)

// Provider backend identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderCohere    = "cohere"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// AllowedFileTypes splits FileAllowedTypes into a normalized extension set.
func (c *Config) AllowedFileTypes() []string {
	parts := strings.Split(c.FileAllowedTypes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
