package config

var LogConfigFromViper = logConfigFromViper
