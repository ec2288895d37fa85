// Package correlate derives strong-correlation annotations from a fit's
// parameter covariance matrix.
//
// The covariance matrix is normalized into a correlation matrix
// (corr[i][j] = cov[i][j] / sqrt(cov[i][i]*cov[j][j])), the intercept
// row/column is excluded, and each parameter is annotated with the names of
// every other parameter whose absolute pairwise correlation exceeds the
// annotator's threshold. Annotation order follows the matrix's column order.
//
// A zero or negative variance on the diagonal makes correlation undefined;
// the annotator fails fast in that case rather than emitting a partial
// result, since a degenerate variance points at an upstream fitting problem.
package correlate
