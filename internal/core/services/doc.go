// Package services holds the contract pipeline and the settings, history
// and template-inspection services behind the driving ports.
//
// Documents are opened and saved only through driven.TemplateLoader. The
// one direct filesystem use is reserving a unique output file name.
package services
