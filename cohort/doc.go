// Package cohort loads and joins the clinical and somatic-mutation tables a
// GLM analysis starts from.
//
// A cohort consists of a clinical covariate table (one row per sample) and
// a mutation call list (sample, gene pairs). Join merges the two on sample
// identifier into a design table: the clinical covariates plus one 0/1
// mutation-status column per gene, restricted to samples present in both
// inputs. The design table writes itself as CSV, which is the shape the
// dstream-based fitting path consumes.
//
// Clinical exports from older systems frequently arrive in Latin-1 or
// Windows-1252; ReadOptions selects the decoding.
//
// Store is a small sqlite-backed cache for cohort tables, so repeated
// analyses of the same cohort do not re-read the source exports. Fetching
// from remote repositories is out of scope; the cache only holds tables the
// caller already loaded.
package cohort
