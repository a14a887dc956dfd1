package command

var Cargueiro struct {
	Ship    shipCommand    `command:"ship" description:"archives a directory and ships it to an ftp server"`
	Archive archiveCommand `command:"archive" description:"archives a directory into a zip file"`

	Upload uploadCommand `command:"upload" hidden:"true"`
}
