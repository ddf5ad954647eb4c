/*
Package sandbox renders composed documents without a browser.

A Page parses the document with goquery and runs its inline scripts in a
fresh goja runtime. The runtime sees a small DOM bound to the parsed tree:

	document.getElementById, querySelector, querySelectorAll,
	createElement, body, head
	element.textContent, innerHTML, id, className, style,
	appendChild, remove, getAttribute, setAttribute, addEventListener

plus console, alert and inert timers. Event listeners are recorded but never
fired. Every Render starts from a new runtime and a new tree, so nothing
survives from the previous document.

Scripts are interrupted after Config.Timeout so a runaway loop cannot hang
the host.
*/
package sandbox
