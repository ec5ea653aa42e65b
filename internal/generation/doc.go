// Package generation holds the provider-neutral parts of text generation:
// the ModelClient boundary that adapters such as the Gemini client implement,
// the Prompt Builder that turns requests into prompts, the Response Parser that
// recovers JSON from free-form model output, and the error taxonomy shared by
// all of them.
package generation
