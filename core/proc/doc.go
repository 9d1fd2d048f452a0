// Package proc starts the operating system processes behind a command line:
// external programs, and copies of the interpreter itself that run a piece
// of command text in a process of their own.
//
// Go cannot fork a running program, so a child interpreter is started by
// executing os.Executable() with ChildArg, a registered entry point name and
// its arguments. The program's main function (or a test's TestMain) hands
// such invocations to RunChild before doing anything else.
package proc
