// Package script parses and runs edit scripts against an engine session.
//
// A script has one command per line. Blank lines and text after # are
// ignored. Strings are double quoted with Go escapes.
//
//	cursor add 6          # second cursor at byte 6
//	insert "x"            # typed at every cursor
//	backspace 2
//	delete
//	replace 0 3 "abc"     # bytes [0,3)
//	select 0 5            # primary cursor only
//	move left 2 extend
//	cursor below
//	cursor clear
//	group begin "rename"
//	replaceall "foo" "bar" 50
//	group end
//	undo
//	redo
//	save
//
// Undo and redo with nothing to do, and adding a cursor where one already
// is, are skipped rather than failing the run.
package script
