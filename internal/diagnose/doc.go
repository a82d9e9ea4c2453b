// Package diagnose classifies a unit's firing behavior against a fixed,
// ordered rule table and maps it back to a probable parameter fault.
//
// Classification is a pure function of the firing rate and the unit's
// parameters; it never inspects the sampled voltage trace. Branches are
// evaluated in order and the first match wins. A matched branch whose
// sub-conditions all fail yields a diagnosis with the branch's problem
// and severity but a blank explanation and recommendation; that gap is
// part of the published rule table and is preserved as-is.
package diagnose
