package cli

// Export internal functions for testing.

// PrimaryQuote exports primaryQuote for testing.
var PrimaryQuote = primaryQuote

// ParseAmount exports parseAmount for testing.
var ParseAmount = parseAmount

// PlanName exports planName for testing.
var PlanName = planName

// CandleDate exports candleDate for testing.
var CandleDate = candleDate

// SearchTable exports searchTable for testing.
var SearchTable = searchTable

// IsCobraUsageError exports isCobraUsageError for testing.
var IsCobraUsageError = isCobraUsageError

// EntityPath exports entityPath for testing.
var EntityPath = entityPath
