package docs

// DefaultTemplate is the builtin machine-setup README template used
// when the caller supplies none.
const DefaultTemplate = `# $FORMULA_NAME$

$FORMULA_DESCRIPTION$

This machine is set up with [outfitter](https://github.com/outfitterhq/outfitter):
formula version $FORMULA_VERSION$, $TASK_COUNT$ tools.

## Tools

$TASK_TABLE$

## Install Order

$INSTALL_ORDER$

---
Generated by $GENERATED_BY$.
`
