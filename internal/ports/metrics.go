package ports

// Metric names reported through MetricsCollector.
const (
	MetricFetchDuration    = "hackq_fetch_duration_seconds"
	MetricFetchTotal       = "hackq_fetch_total"
	MetricPageBytes        = "hackq_page_bytes"
	MetricSearchDuration   = "hackq_search_duration_seconds"
	MetricSearchTotal      = "hackq_search_total"
	MetricSearchResults    = "hackq_search_results"
	MetricCircuitState     = "hackq_search_circuit_state"
	MetricAnswerTotal      = "hackq_answers_total"
	MetricQuestionDuration = "hackq_question_duration_seconds"
)
