package trace

// EnvVar names the file a dev build writes its runtime trace to
const EnvVar = "CARDMANAGE_TRACE"
