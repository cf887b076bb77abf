package main

// Version is the application version shown in the window title.
const Version = "0.3.0"
