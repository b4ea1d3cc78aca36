package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"
	// envKeyEditor names the variable holding the user's editor
	envKeyEditor = "EDITOR"
	// MaxHistoryAnalysisRecords bounds how many entries history stats reads
	MaxHistoryAnalysisRecords = 1000
	// TopQuestionsShown is how many questions history stats lists
	TopQuestionsShown = 5
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable (is history.enabled set?)"
	ErrCacheStoreUnavailable    = "schema cache unavailable"
	ErrQueryServiceUnavailable  = "query service unavailable"
	ErrKeyRequired              = "--key is required"
	ErrQueryRequired            = "--query required"
	ErrModelNameRequired        = "--name is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoCachedSchemas          = "No cached schemas."
	MsgNoSQLGenerated           = "Could not generate SQL from your query."
	MsgCancelled                = "Cancelled."
	MsgDatabaseHint             = "Check database.dsn (or the variable named by database.dsn_env) and run `sqai doctor`."
)

// ExampleQuestions are ready-made questions against the Sakila sample database.
var ExampleQuestions = []string{
	"What are the top 10 most rented films?",
	"Calculate the average revenue per customer",
	"Show me customer retention rate by city",
	"Which actor appeared in the most films?",
}

// DefaultQuestion is asked when no question or example is given.
const DefaultQuestion = "Show me the top 5 most profitable movies"
